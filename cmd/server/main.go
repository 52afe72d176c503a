package main

import (
	"github.com/OFFIS-RIT/nodelink/internal/server"
	"github.com/OFFIS-RIT/nodelink/internal/util"
	"github.com/OFFIS-RIT/nodelink/pkg/logger"
	"github.com/OFFIS-RIT/nodelink/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  util.GetEnvBool("DEBUG", false),
		JSON:   util.GetEnvBool("LOG_JSON", false),
		Prefix: "nodelink",
	}))

	server.Init()
}
