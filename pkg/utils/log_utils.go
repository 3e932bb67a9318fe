package utils

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// PrintMessage prints the message to the console.
func PrintMessage(message string) {
	fmt.Println(message)
}

// PrintMessageInColor prints the message to the console using the provided color.
func PrintMessageInColor(message string, messageColor *color.Color) {
	_, _ = messageColor.Fprint(os.Stdout, message)
}
