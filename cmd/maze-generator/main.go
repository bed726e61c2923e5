package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/minimap"
)

const minimapCellPixels = 20

func main() {
	run(os.Stdin, os.Stdout)
}

// run drives the interactive loop until the user declines or input ends.
func run(in io.Reader, out io.Writer) {
	p := &prompter{r: bufio.NewReader(in), out: out}

	for !p.eof {
		fmt.Fprintln(out, "\n=== VINOM WALKER MAZE GENERATOR ===")

		rows := p.getInt("Rows (default 10): ", 10)
		cols := p.getInt("Cols (default 10): ", 10)
		seed := p.getInt64("Seed (default: current time): ", time.Now().UnixNano())

		algorithm, err := maze.ParseAlgorithm(p.line("Algorithm [backtracker/wilson] (default backtracker): "))
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		opts := []maze.Option{maze.WithAlgorithm(algorithm)}
		if strings.ToLower(p.line("Open entrance and exit? [y/N]: ")) == "y" {
			opts = append(opts,
				maze.WithEntrance(maze.CellPosition{}, maze.North),
				maze.WithExit(maze.CellPosition{Row: rows - 1, Col: cols - 1}, maze.South),
			)
		}

		fmt.Fprintln(out, "\nGenerating...")
		startT := time.Now()
		m, err := maze.Generate(rows, cols, seed, opts...)
		dur := time.Since(startT)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		fmt.Fprintf(out, "Done in %v\n", dur)
		fmt.Fprintf(out, "Grid Dimensions: %dx%d, seed %d, %s\n", m.Cols(), m.Rows(), m.Seed(), m.Algorithm())

		path, err := m.Solution()
		if err != nil {
			fmt.Fprintf(out, "Status: %v\n", err)
		} else {
			fmt.Fprintf(out, "Solution Path Length: %d steps\n", len(path)-1)
		}

		draw(out, m, path)

		if name := p.line("\nWrite minimap PNG to file (empty to skip): "); name != "" {
			if err := writeMinimap(m, name); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			} else {
				fmt.Fprintf(out, "Wrote %s\n", name)
			}
		}

		if strings.ToLower(p.line("\nGenerate another? [Y/n]: ")) == "n" {
			break
		}
	}
}

// draw prints the ASCII layout with the solution path marked in cell centres.
func draw(out io.Writer, m *maze.Maze, path []maze.CellPosition) {
	lines := strings.Split(m.String(), "\n")
	for _, p := range path {
		line := []byte(lines[2*p.Row+1])
		line[4*p.Col+2] = '*'
		lines[2*p.Row+1] = string(line)
	}
	fmt.Fprint(out, strings.Join(lines, "\n"))
}

func writeMinimap(m *maze.Maze, name string) error {
	mm, err := minimap.New(1)
	if err != nil {
		return err
	}
	d := mm.Redraw(m, nil, minimap.Size{W: float64(m.Cols() * minimapCellPixels), H: float64(m.Rows() * minimapCellPixels)})

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return minimap.RenderPNG(d, f)
}

// --- Input Helpers ---

// prompter reads answers line by line and remembers when input has ended.
type prompter struct {
	r   *bufio.Reader
	out io.Writer
	eof bool
}

func (p *prompter) line(prompt string) string {
	fmt.Fprint(p.out, prompt)
	s, err := p.r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		p.eof = true
	}
	return strings.TrimSpace(s)
}

func (p *prompter) getInt(prompt string, def int) int {
	s := p.line(prompt)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func (p *prompter) getInt64(prompt string, def int64) int64 {
	s := p.line(prompt)
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}
