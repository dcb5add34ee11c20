package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	kernelModels "github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/models"
	kernelServices "github.com/sisoputnfrba/tp-2025-2c-AuraOS/kernel/services"
	memoriaServices "github.com/sisoputnfrba/tp-2025-2c-AuraOS/memoria/services"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/shell/models"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/web/client"
	"github.com/sisoputnfrba/tp-2025-2c-AuraOS/utils/web/server"
)

var (
	ErrEmptyCommand   = errors.New("comando vacío")
	ErrUnknownCommand = errors.New("comando desconocido")
	ErrUsage          = errors.New("uso incorrecto")
)

const helpText = `Comandos disponibles:
  status                      estado general del kernel
  ps                          lista procesos e hilos
  create <nombre> <ráfaga> <KB>
  spawn <pid>                 agrega un hilo al proceso
  kill <pid>                  finaliza el proceso
  block|unblock|exit-thread <pid> <tid>
  run [ciclos]                ejecuta ciclos del planificador
  sched <rr|sjf>              cambia el algoritmo de planificación
  queue                       muestra la cola READY
  access <pid> <dirección>    accede a una dirección virtual
  mem                         mapa de marcos
  dump <pid>                  dump de la tabla de páginas
  mutex new|get|lock|unlock|rm [id]
  health                      diagnóstico del sistema
  exit                        sale de la consola`

// ParseCommand separa una línea en nombre de comando y argumentos.
func ParseCommand(line string) (models.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return models.Command{}, ErrEmptyCommand
	}
	return models.Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}, nil
}

// Shell traduce comandos de consola a requests al kernel.
type Shell struct {
	ip   string
	port int
}

func NewShell(config *models.Config) *Shell {
	return &Shell{ip: config.IpKernel, port: config.PortKernel}
}

// Execute corre un comando y devuelve el texto a mostrar. exit indica que el
// usuario pidió salir.
func (shell *Shell) Execute(line string) (output string, exit bool, err error) {
	command, err := ParseCommand(line)
	if err != nil {
		return "", false, err
	}
	slog.Debug(fmt.Sprintf("Comando: %s %v", command.Name, command.Args))

	switch command.Name {
	case "exit", "quit":
		return "Saliendo de AuraOS", true, nil
	case "help":
		return helpText, false, nil
	case "status":
		output, err = shell.status()
	case "ps":
		output, err = shell.listProcesses()
	case "create":
		output, err = shell.createProcess(command.Args)
	case "spawn":
		output, err = shell.spawnThread(command.Args)
	case "kill":
		output, err = shell.killProcess(command.Args)
	case "block":
		output, err = shell.threadAction("bloquear", command.Args)
	case "unblock":
		output, err = shell.threadAction("desbloquear", command.Args)
	case "exit-thread":
		output, err = shell.threadAction("finalizar", command.Args)
	case "run":
		output, err = shell.runCycles(command.Args)
	case "sched":
		output, err = shell.setStrategy(command.Args)
	case "queue":
		output, err = shell.readyQueue()
	case "access":
		output, err = shell.accessMemory(command.Args)
	case "mem":
		output, err = shell.frames()
	case "dump":
		output, err = shell.dumpMemory(command.Args)
	case "mutex":
		output, err = shell.mutex(command.Args)
	case "health":
		output, err = shell.health()
	default:
		err = fmt.Errorf("%w: %s (escriba 'help')", ErrUnknownCommand, command.Name)
	}
	return output, false, err
}

func (shell *Shell) status() (string, error) {
	var status kernelModels.KernelStatusResponse
	if err := shell.call("GET", "kernel", nil, &status); err != nil {
		return "", err
	}
	current := "ninguno"
	if status.CurrentThread != nil {
		current = fmt.Sprintf("(%d:%d)", status.CurrentThread.Pid, status.CurrentThread.Tid)
	}
	return fmt.Sprintf("Planificador: %s (quantum %d) - En CPU: %s - READY: %d\nProcesos: %d - Ciclos: %d (ociosos %d)\nMarcos libres: %d/%d - Reemplazo: %s",
		status.Scheduler, status.Quantum, current, status.ReadyThreads,
		status.Processes, status.Cycles, status.IdleCycles,
		status.FreeFrames, status.TotalFrames, status.PageReplacement), nil
}

func (shell *Shell) listProcesses() (string, error) {
	var processes []kernelModels.ProcessResponse
	if err := shell.call("GET", "kernel/procesos", nil, &processes); err != nil {
		return "", err
	}
	if len(processes) == 0 {
		return "No hay procesos", nil
	}

	var builder strings.Builder
	for _, process := range processes {
		fmt.Fprintf(&builder, "PID %d %-12s %-10s ráfaga=%d memoria=%dKB páginas=%d residentes=%d\n",
			process.Pid, process.Name, process.State, process.BurstTime, process.MemoryKB, process.Pages, process.Resident)
		for _, thread := range process.Threads {
			fmt.Fprintf(&builder, "  TID %d %-10s ciclos=%d\n", thread.Tid, thread.State, thread.CyclesRun)
		}
	}
	return strings.TrimSuffix(builder.String(), "\n"), nil
}

func (shell *Shell) createProcess(args []string) (string, error) {
	if len(args) != 3 {
		return "", fmt.Errorf("%w: create <nombre> <ráfaga> <KB>", ErrUsage)
	}
	numbers, err := parseInts(args[1:])
	if err != nil {
		return "", err
	}

	request := kernelModels.CreateProcessRequest{Name: args[0], BurstTime: numbers[0], MemoryKB: numbers[1]}
	var process kernelModels.ProcessResponse
	if err := shell.call("POST", "kernel/proceso", request, &process); err != nil {
		return "", err
	}
	return fmt.Sprintf("Proceso %d creado (%s) con %d hilos y %d páginas", process.Pid, process.Name, len(process.Threads), process.Pages), nil
}

func (shell *Shell) spawnThread(args []string) (string, error) {
	numbers, err := expectInts(args, 1, "spawn <pid>")
	if err != nil {
		return "", err
	}
	var thread kernelModels.ThreadResponse
	if err := shell.call("POST", fmt.Sprintf("kernel/proceso/%d/hilo", numbers[0]), nil, &thread); err != nil {
		return "", err
	}
	return fmt.Sprintf("Hilo %d creado en el proceso %d", thread.Tid, thread.Pid), nil
}

func (shell *Shell) killProcess(args []string) (string, error) {
	numbers, err := expectInts(args, 1, "kill <pid>")
	if err != nil {
		return "", err
	}
	if err := shell.call("POST", "kernel/finalizarProceso", kernelModels.ProcessRequest{Pid: numbers[0]}, nil); err != nil {
		return "", err
	}
	return fmt.Sprintf("Proceso %d finalizado", numbers[0]), nil
}

func (shell *Shell) threadAction(action string, args []string) (string, error) {
	numbers, err := expectInts(args, 2, "<pid> <tid>")
	if err != nil {
		return "", err
	}
	var thread kernelModels.ThreadResponse
	request := kernelModels.ThreadRequest{Pid: numbers[0], Tid: numbers[1]}
	if err := shell.call("POST", "kernel/hilo/"+action, request, &thread); err != nil {
		return "", err
	}
	return fmt.Sprintf("Hilo (%d:%d) en estado %s", thread.Pid, thread.Tid, thread.State), nil
}

func (shell *Shell) runCycles(args []string) (string, error) {
	cycles := 1
	if len(args) > 0 {
		numbers, err := expectInts(args, 1, "run [ciclos]")
		if err != nil {
			return "", err
		}
		cycles = numbers[0]
	}

	var response kernelModels.CyclesResponse
	if err := shell.call("POST", "kernel/ciclos", kernelModels.CyclesRequest{Cycles: cycles}, &response); err != nil {
		return "", err
	}

	var builder strings.Builder
	for i, cycle := range response.Cycles {
		switch {
		case cycle.Idle:
			fmt.Fprintf(&builder, "Ciclo %d: CPU ociosa\n", i+1)
		case cycle.Preempted:
			fmt.Fprintf(&builder, "Ciclo %d: (%d:%d) desalojado por fin de quantum\n", i+1, cycle.Pid, cycle.Tid)
		default:
			fmt.Fprintf(&builder, "Ciclo %d: (%d:%d)\n", i+1, cycle.Pid, cycle.Tid)
		}
	}
	if len(response.Finished) > 0 {
		fmt.Fprintf(&builder, "Procesos finalizados: %v\n", response.Finished)
	}
	return strings.TrimSuffix(builder.String(), "\n"), nil
}

func (shell *Shell) setStrategy(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: sched <rr|sjf>", ErrUsage)
	}
	var response map[string]string
	if err := shell.call("POST", "kernel/planificador", kernelModels.StrategyRequest{Algorithm: args[0]}, &response); err != nil {
		return "", err
	}
	return "Algoritmo activo: " + response["algorithm"], nil
}

func (shell *Shell) readyQueue() (string, error) {
	var queue kernelModels.QueueResponse
	if err := shell.call("GET", "kernel/cola", nil, &queue); err != nil {
		return "", err
	}
	return queue.Status, nil
}

func (shell *Shell) accessMemory(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("%w: access <pid> <dirección>", ErrUsage)
	}
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("%w: pid inválido %q", ErrUsage, args[0])
	}
	address, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return "", fmt.Errorf("%w: dirección inválida %q", ErrUsage, args[1])
	}

	var result memoriaServices.AccessResult
	request := kernelModels.MemoryAccessRequest{Pid: pid, VirtualAddress: uint(address)}
	if err := shell.call("POST", "memoria/acceso", request, &result); err != nil {
		return "", err
	}

	if result.Hit {
		return fmt.Sprintf("PID %d - Página %d en marco %d (hit)", result.PID, result.PageNumber, result.Frame), nil
	}
	output := fmt.Sprintf("PID %d - Page fault: página %d cargada en marco %d", result.PID, result.PageNumber, result.Frame)
	if result.Evicted != nil {
		output += fmt.Sprintf(" - Se desalojó la página %d del PID %d", result.Evicted.PageNumber, result.Evicted.PID)
	}
	return output, nil
}

func (shell *Shell) frames() (string, error) {
	var frames kernelModels.FramesResponse
	if err := shell.call("GET", "memoria/marcos", nil, &frames); err != nil {
		return "", err
	}
	return fmt.Sprintf("Marcos libres: %d/%d - %s\n%s\n%s\nAccesos: %d - Hits: %d - Page faults: %d - Desalojos: %d",
		frames.FreeFrames, frames.TotalFrames, frames.Algorithm, frames.Map, frames.AlgorithmStatus,
		frames.Stats.Accesses, frames.Stats.Hits, frames.Stats.PageFaults, frames.Stats.Evictions), nil
}

func (shell *Shell) dumpMemory(args []string) (string, error) {
	numbers, err := expectInts(args, 1, "dump <pid>")
	if err != nil {
		return "", err
	}
	var dump kernelModels.DumpResponse
	if err := shell.call("POST", "memoria/dump", kernelModels.ProcessRequest{Pid: numbers[0]}, &dump); err != nil {
		return "", err
	}
	return fmt.Sprintf("Dump del proceso %d en %s", dump.Pid, dump.Path), nil
}

func (shell *Shell) mutex(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: mutex new|get|lock|unlock|rm [id]", ErrUsage)
	}
	if args[0] == "new" {
		var mutex kernelModels.MutexResponse
		if err := shell.call("POST", "kernel/mutex", nil, &mutex); err != nil {
			return "", err
		}
		return fmt.Sprintf("Mutex %d creado", mutex.Id), nil
	}

	numbers, err := expectInts(args[1:], 1, "mutex "+args[0]+" <id>")
	if err != nil {
		return "", err
	}
	id := numbers[0]

	var mutex kernelModels.MutexResponse
	switch args[0] {
	case "get":
		err = shell.call("GET", fmt.Sprintf("kernel/mutex/%d", id), nil, &mutex)
	case "lock":
		err = shell.call("POST", fmt.Sprintf("kernel/mutex/%d/tomar", id), nil, &mutex)
	case "unlock":
		err = shell.call("POST", fmt.Sprintf("kernel/mutex/%d/liberar", id), nil, &mutex)
	case "rm":
		if err := shell.call("DELETE", fmt.Sprintf("kernel/mutex/%d", id), nil, nil); err != nil {
			return "", err
		}
		return fmt.Sprintf("Mutex %d destruido", id), nil
	default:
		return "", fmt.Errorf("%w: mutex new|get|lock|unlock|rm [id]", ErrUsage)
	}
	if err != nil {
		return "", err
	}

	state := "libre"
	if mutex.Locked {
		state = "tomado"
	}
	return fmt.Sprintf("Mutex %d %s", mutex.Id, state), nil
}

func (shell *Shell) health() (string, error) {
	var anomalies []kernelServices.Anomaly
	if err := shell.call("GET", "kernel/salud", nil, &anomalies); err != nil {
		return "", err
	}
	if len(anomalies) == 0 {
		return "Sistema sano", nil
	}
	lines := make([]string, 0, len(anomalies))
	for _, anomaly := range anomalies {
		lines = append(lines, anomaly.String())
	}
	return strings.Join(lines, "\n"), nil
}

// call envía la request al kernel y decodifica la respuesta en target. Si el
// kernel responde con error devuelve su mensaje.
func (shell *Shell) call(method string, query string, body any, target any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = encoded
	}

	response, err := client.DoRequest(shell.port, shell.ip, method, query, payload)
	if response == nil {
		return fmt.Errorf("no se pudo conectar con el kernel en %s:%d: %w", shell.ip, shell.port, err)
	}
	defer response.Body.Close()

	if err != nil {
		var errorResponse server.ErrorResponse
		content, _ := io.ReadAll(response.Body)
		if json.Unmarshal(content, &errorResponse) == nil && errorResponse.Message != "" {
			return fmt.Errorf("kernel respondió %d: %s", response.StatusCode, errorResponse.Message)
		}
		return err
	}

	if target == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(target)
}

func parseInts(args []string) ([]int, error) {
	numbers := make([]int, len(args))
	for i, arg := range args {
		number, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: se esperaba un número y llegó %q", ErrUsage, arg)
		}
		numbers[i] = number
	}
	return numbers, nil
}

func expectInts(args []string, count int, usage string) ([]int, error) {
	if len(args) != count {
		return nil, fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	return parseInts(args)
}
