// Command crawl plays a loadfile in the terminal, one line per turn.
//
//	crawl <loadfile> <width> <height>
//
// h/j/k/l move, ',' waits, 'q' quits.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"gridcrawl/server/config"
	"gridcrawl/server/services"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, in io.Reader, out io.Writer) int {
	if len(args) != 3 {
		fmt.Fprintln(out, "usage: crawl <loadfile> <width> <height>")
		return 2
	}
	width, err := strconv.Atoi(args[1])
	if err != nil {
		log.Printf("Bad width %q: %v", args[1], err)
		return 2
	}
	height, err := strconv.Atoi(args[2])
	if err != nil {
		log.Printf("Bad height %q: %v", args[2], err)
		return 2
	}

	cfg, err := config.Load(config.Getenv("CONFIG_FILE", "crawl.yaml"))
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	game, err := services.LoadFile(args[0], width, height, cfg.Balance)
	if err != nil {
		log.Printf("Failed to load %s: %v", args[0], err)
		return 1
	}

	play(game, in, out)
	return 0
}

func play(game *services.Game, in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)
	for {
		draw(game, out)
		fmt.Fprintln(out, "Input: ")

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			log.Printf("Error reading input: %v", err)
			return
		}

		cmd, perr := services.ParseCommand(line)
		if perr != nil {
			fmt.Fprintf(out, "I don't know how to %c\n", cmd.Key)
			continue
		}
		if cmd.Type == services.CommandQuit {
			if cmd.Key == 'q' {
				fmt.Fprintln(out, "I fall on my sword.")
			}
			return
		}

		// Walking off the map is simply ignored.
		game.Execute(cmd)
	}
}

func draw(game *services.Game, out io.Writer) {
	for _, row := range game.Render() {
		fmt.Fprintln(out, row)
	}
	p := game.Player()
	fmt.Fprintf(out, "HP %d  Gold %d  Turn %d\n", p.HP, p.Gold, game.Turn)
}
