//go:build tools

// Package tools pins the versions of development binaries:
//
//	go run github.com/golangci/golangci-lint/cmd/golangci-lint run
//	go run github.com/pressly/goose/v3/cmd/goose -dir migrations postgres "$DSN" status
//	go test -run ^$ -bench . -count 10 ./internal/drop ./internal/naming > new.txt
//	go run golang.org/x/perf/cmd/benchstat old.txt new.txt
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "golang.org/x/perf/cmd/benchstat"
)
