// littlecalc - a little extensible RPN calculator.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/littlecalc/littlecalc/pkg/calc"
	"github.com/littlecalc/littlecalc/pkg/modules/builtins"
	"github.com/littlecalc/littlecalc/pkg/modules/constants"
	"github.com/littlecalc/littlecalc/pkg/modules/decimal"
	"github.com/littlecalc/littlecalc/pkg/modules/integer"
	"github.com/littlecalc/littlecalc/pkg/parser"
)

var (
	flagPrec  = flag.Uint("prec", decimal.DefaultPrecision, "decimal working precision in digits")
	flagQuiet = flag.Bool("quiet", false, "quiet mode (no banner)")
)

func main() {
	flag.Parse()

	dec := decimal.WithPrecision(uint32(*flagPrec))
	engine, err := calc.New(
		builtins.New(),
		integer.New(),
		dec,
		constants.WithContext(dec.Context()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "littlecalc: %v\n", err)
		os.Exit(1)
	}

	if args := flag.Args(); len(args) > 0 {
		// Evaluate the command line as one expression and print X.
		out := evalLine(engine, strings.Join(args, " "))
		if !out.OK {
			fmt.Fprintf(os.Stderr, "littlecalc: %s: %v\n", out.ErrorKind(), out.Err)
			os.Exit(1)
		}
		if len(out.Stack) > 0 {
			fmt.Println(out.Stack[len(out.Stack)-1])
		}
		return
	}

	runREPL(engine)
}

func evalLine(engine *calc.Engine, line string) calc.Outcome {
	tokens, err := parser.Tokenize(line)
	if err != nil {
		return calc.Outcome{Err: calc.ParseError{Token: strings.TrimSpace(line)}}
	}
	return engine.Run(tokens)
}

func runREPL(engine *calc.Engine) {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive && !*flagQuiet {
		fmt.Println("littlecalc - extensible RPN calculator (:help for commands)")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print(">>> ")
		}
		if !scanner.Scan() {
			if interactive {
				fmt.Println()
			}
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := handleCommand(engine, line); quit {
				return
			}
			continue
		}

		out := evalLine(engine, line)
		if !out.OK {
			fmt.Printf("error: %s: %v\n", out.ErrorKind(), out.Err)
		}
		if interactive {
			printRegisters(engine.Stack())
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "littlecalc: %v\n", err)
		os.Exit(1)
	}
}

// printRegisters shows the top of the stack HP-style: T, Z, Y and X
// registers, topmost (X) last.
func printRegisters(st *calc.Stack) {
	names := "TZYX"
	depth := st.Size()
	if depth > 4 {
		depth = 4
	}
	for i := depth - 1; i >= 0; i-- {
		v, err := st.Peek(i)
		if err != nil {
			return
		}
		fmt.Printf("%c: %s\n", names[4-1-i], v)
	}
}

func handleCommand(engine *calc.Engine, line string) (quit bool) {
	switch strings.TrimSpace(line) {
	case ":help", ":h", ":?":
		printHelp()
	case ":quit", ":q", ":exit":
		return true
	case ":stack", ":s":
		fmt.Println(engine.Stack())
	case ":clear", ":c":
		engine.Stack().Clear()
		fmt.Println("stack cleared")
	case ":words", ":w":
		printWords(engine.Registry())
	default:
		fmt.Printf("unknown command %q (:help for a list)\n", line)
	}
	return false
}

func printWords(reg *calc.Registry) {
	fmt.Println("operations:")
	printColumns(reg.OperationNames())
	fmt.Println("constants:")
	printColumns(reg.ConstantNames())
}

func printColumns(names []string) {
	const cols = 6
	for i, name := range names {
		fmt.Printf("  %-10s", name)
		if (i+1)%cols == 0 {
			fmt.Println()
		}
	}
	if len(names)%cols != 0 {
		fmt.Println()
	}
}

func printHelp() {
	fmt.Print(`commands:
  :help, :h, :?    show this help
  :quit, :q        exit
  :stack, :s       show the whole stack
  :clear, :c       clear the stack
  :words, :w       list operations and constants

usage:
  tokens are evaluated in RPN order: "3.5 2.5 add" leaves 6.0 on the
  stack. Integer literals make integers, anything with a point or
  exponent makes an arbitrary-precision decimal. "sto x" stores the
  top value under x, "rcl x" recalls it. "pi", "e" and the physical
  constants push their value; "const <id>" does the same.
`)
}
