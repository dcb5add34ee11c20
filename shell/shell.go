package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tty "github.com/mattn/go-tty"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/shell/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/shell/services"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/config"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/log"
)

const (
	ConfigPath = "shell/configs/shell.json"
	LogPath    = "./logs/shell.log"
)

func main() {
	configPath := ConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	var shellConfig models.Config
	config.InitConfig(configPath, &shellConfig)

	if err := log.InitLogger(LogPath, shellConfig.LogLevel); err != nil {
		slog.Warn(fmt.Sprintf("No se pudo inicializar el log en %s: %v", LogPath, err))
	}

	slog.Debug(fmt.Sprintf("Kernel en %s:%d", shellConfig.IpKernel, shellConfig.PortKernel))

	terminal, err := tty.Open()
	if err != nil {
		slog.Error(fmt.Sprintf("No se pudo abrir la terminal: %v", err))
		os.Exit(1)
	}
	defer terminal.Close()

	shell := services.NewShell(&shellConfig)
	output := terminal.Output()
	fmt.Fprintln(output, "Bienvenido a AuraOS - escriba 'help' para ver los comandos")

	for {
		_, _ = output.WriteString(shellConfig.Prompt)
		line, err := terminal.ReadString()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				slog.Error(fmt.Sprintf("Error leyendo de la terminal: %v", err))
			}
			return
		}

		result, exit, err := shell.Execute(line)
		switch {
		case errors.Is(err, services.ErrEmptyCommand):
		case err != nil:
			fmt.Fprintf(output, "Error: %v\n", err)
		case result != "":
			fmt.Fprintln(output, result)
		}
		if exit {
			return
		}
	}
}
