package main

import (
	"gamepress/cmd/handlers"
	"gamepress/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
