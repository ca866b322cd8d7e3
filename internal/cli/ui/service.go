package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kzmarket/productseed/internal/seeder"
)

// Service handles user interface operations like spinners, prompts and run notices
type Service interface {
	seeder.Reporter

	// ShowSpinner displays a spinner with a message and returns a stop function
	ShowSpinner(message string) func(completedMessage string)
	// PromptForCount asks question until a positive count is entered or ctx is done
	PromptForCount(ctx context.Context, question string) (int, error)
	// Elapsed prints the duration of a finished run
	Elapsed(d time.Duration)
	// Printf writes a free-form line to the console
	Printf(format string, args ...any)
}

// service implements Service interface
type service struct {
	in  *bufio.Reader
	out io.Writer
	mu  *sync.Mutex
}

// ProvideUIService creates a UI service bound to the process stdin and stdout
func ProvideUIService() Service {
	return NewService(os.Stdin, os.Stdout)
}

// NewService creates a UI service reading from in and writing to out
func NewService(in io.Reader, out io.Writer) Service {
	return &service{
		in:  bufio.NewReader(in),
		out: out,
		mu:  &sync.Mutex{},
	}
}

// ShowSpinner displays a spinner with a message and returns a stop function
func (s *service) ShowSpinner(message string) func(completedMessage string) {
	spinner := NewSpinner(s.out, s.mu)
	spinner.Start(message)
	return func(completedMessage string) {
		spinner.Stop(completedMessage)
	}
}

// PromptForCount asks until a positive integer is entered. It fails when input
// ends or ctx is cancelled while waiting for a line.
func (s *service) PromptForCount(ctx context.Context, question string) (int, error) {
	for {
		s.Printf("%s ", question)

		input, err := s.readLine(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.Printf("\n")
			return 0, ctxErr
		}
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(input) == "") {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}

		count, parseErr := ParseCount(input)
		if parseErr == nil {
			return count, nil
		}
		if err != nil {
			return 0, parseErr
		}
		s.Printf("❌ %v. Please try again.\n", parseErr)
	}
}

type readResult struct {
	line string
	err  error
}

// readLine reads one line without blocking past ctx. A read abandoned on
// cancellation finishes in the background.
func (s *service) readLine(ctx context.Context) (string, error) {
	result := make(chan readResult, 1)
	go func() {
		line, err := s.in.ReadString('\n')
		result <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-result:
		return r.line, r.err
	}
}

// Progress prints the running number of inserted products
func (s *service) Progress(written int) {
	s.Printf("Inserted %d products...\n", written)
}

// Done prints the completion line of a run
func (s *service) Done(total int) {
	s.Printf("✅ Done! Inserted %d products.\n", total)
}

// Elapsed prints the duration of a finished run
func (s *service) Elapsed(d time.Duration) {
	s.Printf("⏱️ Time elapsed: %.2f seconds\n", d.Seconds())
}

func (s *service) Printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// ParseCount converts user input into a product count
func ParseCount(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	count, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", seeder.ErrInvalidCount, trimmed)
	}
	if count <= 0 {
		return 0, fmt.Errorf("%w, got %d", seeder.ErrInvalidCount, count)
	}
	return count, nil
}

// Spinner handles animated loading indicators
type Spinner struct {
	chars   []string
	delay   time.Duration
	done    chan bool
	out     io.Writer
	mu      *sync.Mutex
	stopped bool // Track if spinner has been stopped
}

// NewSpinner creates a spinner writing to out. mu serializes writes with other console output.
func NewSpinner(out io.Writer, mu *sync.Mutex) *Spinner {
	return &Spinner{
		chars: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		delay: 100 * time.Millisecond,
		done:  make(chan bool, 1), // Make the channel buffered to prevent deadlock
		out:   out,
		mu:    mu,
	}
}

func (s *Spinner) Start(message string) {
	go func() {
		i := 0
		for {
			select {
			case <-s.done:
				return
			default:
				s.mu.Lock()
				if s.stopped {
					s.mu.Unlock()
					return
				}
				fmt.Fprintf(s.out, "\r%s %s", s.chars[i%len(s.chars)], message)
				s.mu.Unlock()
				i++
				time.Sleep(s.delay)
			}
		}
	}()
}

func (s *Spinner) Stop(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Prevent multiple calls to Stop
	if s.stopped {
		return
	}
	s.stopped = true

	// Send stop signal (non-blocking with buffered channel)
	select {
	case s.done <- true:
	default:
		// Channel already has a value, that's fine
	}

	fmt.Fprintf(s.out, "\r✔ %s\n", message)
}
