package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/calclab/intexpr"
)

const usage = `Integer calculator with variables.

Enter an expression to evaluate it, or "name = expression" to bind the
result to a variable. Operators are + - * / ^ with parentheses; all values
are arbitrary-precision integers.

Commands:
	help	print this message
	vars	list variable bindings
	exit	quit (also quit)
`

func main() {
	log.SetFlags(0)
	env := intexpr.NewEnv()
	var (
		inname  string
		envfile string
		quiet   bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&envfile, "given-file", "", "name=value file of variable definitions to preload")
	flag.Func("given", "name=value variable definition (any number of times)", func(s string) error {
		return intexpr.Assign(s, env)
	})
	flag.BoolVar(&quiet, "q", false, "don't print the prompt")
	flag.Parse()

	if envfile != "" {
		given, err := godotenv.Read(envfile)
		if err != nil {
			log.Fatal(err)
		}
		for name, value := range given {
			if err := intexpr.Assign(name+" = "+value, env); err != nil {
				log.Fatalf("loading %s: %v", envfile, err)
			}
		}
	}

	// With args, evaluate each argument once and exit.
	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			if !dispatch(arg, env) {
				os.Exit(1)
			}
		}
		return
	}

	in, err := infile(inname)
	if err != nil {
		log.Fatal(err)
	}
	interactive := in == os.Stdin && !quiet

	prompt := color.New(color.FgCyan)
	sc := bufio.NewScanner(in)
	for {
		if interactive {
			prompt.Print("> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return
		case "help":
			fmt.Print(usage)
			continue
		case "vars":
			for _, name := range env.Names() {
				v, _ := env.Get(name)
				fmt.Printf("%s = %v\n", name, v)
			}
			continue
		}
		dispatch(line, env)
	}
	if err := sc.Err(); err != nil {
		log.Fatal(err)
	}
}

// dispatch runs one line as an assignment or an evaluation and reports
// whether it succeeded.
func dispatch(line string, env *intexpr.Env) bool {
	if strings.ContainsRune(line, '=') {
		if err := intexpr.Assign(line, env); err != nil {
			color.Red("%v", err)
			return false
		}
		return true
	}
	r, err := intexpr.EvalString(line, env)
	if err != nil {
		color.Red("%v", err)
		return false
	}
	fmt.Println(r)
	return true
}

func infile(inname string) (io.Reader, error) {
	if inname == "" || inname == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, err
	}
	return f, nil
}
