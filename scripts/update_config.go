package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Para su uso se debe posicionar en la carpeta scripts
// > go run update_config.go port_kernel 8002
// > go run update_config.go ip_kernel 192.168.1.100 port_kernel 8002

var modules = []string{"kernel", "shell"}

var errArgs = errors.New("los argumentos deben venir en pares clave valor")

func main() {
	updates, err := parseUpdates(os.Args[1:])
	if err != nil {
		fmt.Println("Uso: update_config <clave_1> <valor_1> [<clave_2> <valor_2> ...]")
		fmt.Println("Ejemplo: update_config ip_kernel 192.168.0.20 quantum 3")
		return
	}

	fmt.Println("Valores a actualizar:")
	for k, v := range updates {
		fmt.Printf("  %s: %v\n", k, v)
	}

	for _, module := range modules {
		paths, err := filepath.Glob(filepath.Join("..", module, "configs", "*.json"))
		if err != nil {
			fmt.Printf("Error buscando configs de %s: %v\n", module, err)
			continue
		}
		fmt.Printf("\nProcesando módulo: %s (%d archivos)\n", module, len(paths))

		for _, path := range paths {
			modified, err := updateFile(path, updates)
			switch {
			case err != nil:
				fmt.Printf("  Error en %s: %v\n", path, err)
			case modified:
				fmt.Printf("  El archivo %s ha sido actualizado correctamente.\n", path)
			default:
				fmt.Printf("  No se encontraron claves a actualizar en %s.\n", path)
			}
		}
	}

	fmt.Println("\nProceso de actualización de configuraciones finalizado.")
}

// parseUpdates arma el mapa de claves a valores. Cada valor se interpreta
// como JSON y, si no lo es, queda como string.
func parseUpdates(args []string) (map[string]any, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, errArgs
	}

	updates := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		var value any
		if err := json.Unmarshal([]byte(args[i+1]), &value); err != nil {
			value = args[i+1]
		}
		updates[args[i]] = value
	}
	return updates, nil
}

// applyUpdates solo pisa claves que ya existen en la config.
func applyUpdates(data map[string]any, updates map[string]any) bool {
	modified := false
	for key, value := range updates {
		if _, ok := data[key]; ok {
			data[key] = value
			modified = true
		}
	}
	return modified
}

func updateFile(path string, updates map[string]any) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return false, fmt.Errorf("json inválido: %w", err)
	}
	if !applyUpdates(data, updates) {
		return false, nil
	}

	newJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, newJSON, 0644)
}
