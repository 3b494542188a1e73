package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/gogpu/fonts"
)

var errQuit = errors.New("quit")

// Intp is the interactive interpreter. It keeps numbered slots for the
// handles it created so they can be cloned and released by number.
type Intp struct {
	fs      *fonts.Fonts
	cfg     *Config
	fonts   []*fonts.Font
	buffers []*fonts.Buffer
	refs    []fonts.BufferRef
}

type command struct {
	usage string
	run   func(intp *Intp, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"resolve": {"resolve [family,...] [weight] [style]", (*Intp).resolve},
		"buffer":  {"buffer <font#> <text>", (*Intp).buffer},
		"replace": {"replace <buffer#> <text>", (*Intp).replace},
		"glyphs":  {"glyphs <buffer#>", (*Intp).glyphs},
		"clone":   {"clone font|buffer <#>", (*Intp).clone},
		"release": {"release font|buffer <#>", (*Intp).release},
		"weak":    {"weak <buffer#>", (*Intp).weak},
		"upgrade": {"upgrade <ref#>", (*Intp).upgrade},
		"stats":   {"stats", (*Intp).stats},
		"help":    {"help", (*Intp).help},
		"quit":    {"quit", func(*Intp, []string) error { return errQuit }},
	}
}

func repl(fs *fonts.Fonts, cfg *Config) error {
	rl, err := readline.New("fonts > ")
	if err != nil {
		return err
	}
	defer rl.Close()

	intp := &Intp{fs: fs, cfg: cfg}
	defer intp.releaseAll()

	pterm.Info.Println("fontinspect interactive mode; quit with <ctrl>D or 'quit'")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if err := intp.execute(line); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			pterm.Error.Println(err)
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}

// execute runs one command line.
func (intp *Intp) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	return cmd.run(intp, fields[1:])
}

func (intp *Intp) releaseAll() {
	for _, b := range intp.buffers {
		if b != nil {
			b.Release()
		}
	}
	for _, f := range intp.fonts {
		if f != nil {
			f.Release()
		}
	}
	intp.buffers, intp.fonts = nil, nil
}

func (intp *Intp) resolve(args []string) error {
	q := intp.cfg.Query
	if len(args) > 0 {
		q.Families = splitList(args[0])
	}
	if len(args) > 1 {
		w, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return fmt.Errorf("bad weight %q", args[1])
		}
		q.Weight = float32(w)
	}
	if len(args) > 2 {
		q.Style = args[2]
	}
	props, err := q.Properties()
	if err != nil {
		return err
	}
	f, ok := intp.fs.ResolveBestFont(q.FamilyNames(), props)
	if !ok {
		return fmt.Errorf("no font for %v %v", q.FamilyNames(), props)
	}
	intp.fonts = append(intp.fonts, f)
	pterm.Printf("font #%d: ", len(intp.fonts)-1)
	printFont(f)
	return nil
}

func (intp *Intp) buffer(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: " + commands["buffer"].usage)
	}
	f, err := intp.font(args[0])
	if err != nil {
		return err
	}
	b := f.CreateBuffer(strings.Join(args[1:], " "))
	intp.buffers = append(intp.buffers, b)
	pterm.Printf("buffer #%d (id %v): %d glyphs\n", len(intp.buffers)-1, b.ID(), len(b.Glyphs(nil)))
	return nil
}

func (intp *Intp) replace(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: " + commands["replace"].usage)
	}
	b, err := intp.buf(args[0])
	if err != nil {
		return err
	}
	b.Replace(strings.Join(args[1:], " "))
	pterm.Printf("buffer #%s: %d glyphs\n", args[0], len(b.Glyphs(nil)))
	return nil
}

func (intp *Intp) glyphs(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: " + commands["glyphs"].usage)
	}
	b, err := intp.buf(args[0])
	if err != nil {
		return err
	}
	pterm.Printf("%q with %s\n", b.Text(), b.Font().FullName())
	printGlyphs(b.Glyphs(nil))
	return nil
}

func (intp *Intp) clone(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: " + commands["clone"].usage)
	}
	switch args[0] {
	case "font":
		f, err := intp.font(args[1])
		if err != nil {
			return err
		}
		intp.fonts = append(intp.fonts, f.Clone())
		pterm.Printf("font #%d, refs %d\n", len(intp.fonts)-1, f.RefCount())
	case "buffer":
		b, err := intp.buf(args[1])
		if err != nil {
			return err
		}
		intp.buffers = append(intp.buffers, b.Clone())
		pterm.Printf("buffer #%d, refs %d, font refs %d\n", len(intp.buffers)-1, b.RefCount(), b.Font().RefCount())
	default:
		return errors.New("usage: " + commands["clone"].usage)
	}
	return nil
}

func (intp *Intp) release(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: " + commands["release"].usage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad number %q", args[1])
	}
	switch args[0] {
	case "font":
		f, err := intp.font(args[1])
		if err != nil {
			return err
		}
		f.Release()
		intp.fonts[n] = nil
	case "buffer":
		b, err := intp.buf(args[1])
		if err != nil {
			return err
		}
		b.Release()
		intp.buffers[n] = nil
	default:
		return errors.New("usage: " + commands["release"].usage)
	}
	return intp.stats(nil)
}

func (intp *Intp) weak(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: " + commands["weak"].usage)
	}
	b, err := intp.buf(args[0])
	if err != nil {
		return err
	}
	intp.refs = append(intp.refs, b.WeakRef())
	pterm.Printf("ref #%d -> font %v buffer %v\n", len(intp.refs)-1, b.WeakRef().Font, b.WeakRef().Buffer)
	return nil
}

func (intp *Intp) upgrade(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: " + commands["upgrade"].usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n >= len(intp.refs) {
		return fmt.Errorf("no ref #%s", args[0])
	}
	b, ok := intp.fs.BufferByRef(intp.refs[n])
	if !ok {
		return fmt.Errorf("ref #%d is dangling", n)
	}
	intp.buffers = append(intp.buffers, b)
	pterm.Printf("buffer #%d, refs %d\n", len(intp.buffers)-1, b.RefCount())
	return nil
}

func (intp *Intp) stats([]string) error {
	printStats(intp.fs)
	return nil
}

func (intp *Intp) help([]string) error {
	names := []string{"resolve", "buffer", "replace", "glyphs", "clone", "release", "weak", "upgrade", "stats", "quit"}
	for _, name := range names {
		pterm.Println("  " + commands[name].usage)
	}
	pterm.Printf("default families: %v\n", intp.cfg.Query.FamilyNames())
	return nil
}

func (intp *Intp) font(arg string) (*fonts.Font, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n >= len(intp.fonts) || intp.fonts[n] == nil {
		return nil, fmt.Errorf("no font #%s", arg)
	}
	return intp.fonts[n], nil
}

func (intp *Intp) buf(arg string) (*fonts.Buffer, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n >= len(intp.buffers) || intp.buffers[n] == nil {
		return nil, fmt.Errorf("no buffer #%s", arg)
	}
	return intp.buffers[n], nil
}
