package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Defaulter lo implementan las configuraciones que completan valores no informados.
type Defaulter interface {
	ApplyDefaults()
}

// Validator lo implementan las configuraciones que chequean sus valores.
type Validator interface {
	Validate() error
}

// InitConfig lee el archivo de configuración y carga sus valores en config.
// Si no se puede leer o el contenido es inválido finaliza con panic.
//
// Parámetros:
//   - filePath: ubicación donde se encuentra el archivo de configuración
//   - config: puntero a cualquier estructura
//
// Ejemplo:
//
//	func main() {
//		var kernelConfig models.Config
//		config.InitConfig("./configs/kernel.json", &kernelConfig)
//	}
func InitConfig(filePath string, config any) {
	if err := LoadConfig(filePath, config); err != nil {
		panic(fmt.Errorf("error al configurar el archivo %s: %w", filePath, err))
	}
}

// LoadConfig decodifica el JSON de filePath en config. Si config implementa
// Defaulter y/o Validator se aplican los valores por defecto y luego se valida.
func LoadConfig(filePath string, config any) error {
	if err := setupConfig(filePath, config); err != nil {
		return err
	}

	if defaulter, ok := config.(Defaulter); ok {
		defaulter.ApplyDefaults()
	}
	if validator, ok := config.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("configuración inválida: %w", err)
		}
	}
	return nil
}

func setupConfig(filePath string, config any) error {
	configFile, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer configFile.Close()

	jsonParser := json.NewDecoder(configFile)
	if err := jsonParser.Decode(config); err != nil {
		return err
	}

	return nil
}
