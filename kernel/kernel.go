package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	kernelHandler "github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/handlers"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/services"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/config"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/log"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/web/server"
)

const (
	ConfigPath = "kernel/configs/kernel.json"
	LogPath    = "./logs/kernel.log"
)

func main() {
	configPath := ConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	kernelConfig := models.DefaultConfig()
	config.InitConfig(configPath, &kernelConfig)

	if err := log.InitLogger(LogPath, kernelConfig.LogLevel); err != nil {
		slog.Warn(fmt.Sprintf("No se pudo inicializar el log en %s: %v", LogPath, err))
	}

	slog.Debug(fmt.Sprintf("Port Kernel: %d", kernelConfig.PortKernel))

	kernel, err := services.NewKernel(kernelConfig)
	if err != nil {
		slog.Error(fmt.Sprintf("No se pudo crear el kernel: %v", err))
		os.Exit(1)
	}
	kernel.Boot()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if kernelConfig.CycleDelay > 0 {
		go kernel.RunCycleDriver(ctx, time.Duration(kernelConfig.CycleDelay)*time.Millisecond)
	}

	go func() {
		<-ctx.Done()
		slog.Debug("Señal recibida, cerrando Kernel")
		kernel.Shutdown()
		os.Exit(0)
	}()

	/* ----------> ENDPOINTS <----------*/
	mux := http.NewServeMux()
	kernelHandler.RegisterRoutes(mux, kernel)

	err = server.InitServer(kernelConfig.PortKernel, mux)
	if err != nil {
		slog.Error(fmt.Sprintf("error initializing server: %v", err))
		panic(err)
	}
}
