package utils

import (
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// PrintAsJSON prints the provided value as a JSON document to the console.
func PrintAsJSON(data interface{}) error {
	json := jsoniter.ConfigDefault
	j, err := json.MarshalIndent(data, "", strings.Repeat(" ", 2))
	if err != nil {
		return err
	}
	fmt.Println(string(j))
	return nil
}

// WriteToFileAsJSON converts the provided value to JSON and writes it to the provided file.
func WriteToFileAsJSON(filePath string, data interface{}, fileMode os.FileMode) error {
	json := jsoniter.ConfigDefault
	j, err := json.MarshalIndent(data, "", strings.Repeat(" ", 2))
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, j, fileMode)
}
