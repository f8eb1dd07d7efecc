package kiosk

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers yes/no to a destructive-action prompt. Deletion flows
// receive it injected so the decision can come from a terminal, a scripted
// test, or an HTTP confirmation exchange.
type Confirmer func(prompt string) bool

// AutoConfirm approves every prompt. Used when confirmation is enforced at
// an outer boundary (the web layer's token exchange).
func AutoConfirm(string) bool { return true }

// TerminalConfirmer prompts on out and reads a y/yes answer from in.
func TerminalConfirmer(in io.Reader, out io.Writer) Confirmer {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
