package cmdshared

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// PromptYesNo asks a yes/no question on stdin, defaulting to yes
func PromptYesNo(prompt string) bool {
	ok, err := Confirm(prompt, os.Stdin, viper.GetBool("non-interactive"))
	if err != nil {
		fmt.Printf("Failed to prompt user: %v\n", err)
		os.Exit(1)
	}
	return ok
}

// Confirm prints prompt and reads the answer from in. Anything not starting with "n" is a yes.
// In non-interactive mode nothing is read.
func Confirm(prompt string, in io.Reader, nonInteractive bool) (bool, error) {
	fmt.Print(prompt)
	if nonInteractive {
		fmt.Println("Y (non-interactive mode)")
		return true, nil
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(err == io.EOF && len(answer) > 0) {
		return false, err
	}

	ansNormal := strings.ToLower(strings.TrimSpace(answer))
	if len(ansNormal) > 0 && ansNormal[0] == 'n' {
		return false, nil
	}
	return true, nil
}
