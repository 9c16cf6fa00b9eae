package main

import (
	"github.com/edgarrmondragon/citric-sub000/internal/cli"
	"github.com/edgarrmondragon/citric-sub000/internal/common/logtrace"
)

func init() {
	logtrace.InitLogger()
}

func main() {
	cli.Execute()
}
