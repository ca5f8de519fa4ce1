package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alearecuest/SuperSID-Pro/internal/app"
	"github.com/alearecuest/SuperSID-Pro/internal/client"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:8000", "Base URL of the SuperSID backend")
	debug := flag.Bool("debug", false, "Write client logs to supersid-tui.log")
	flag.Parse()

	// The stream URL is derived from the HTTP base, same host and port.
	wsURL, err := client.StreamURL(*server)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid server URL %q: %v\n", *server, err)
		os.Exit(1)
	}

	// log.Printf output would garble the alt screen, so it either goes
	// to a file or nowhere.
	if *debug {
		f, err := tea.LogToFile("supersid-tui.log", "supersid")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	stream := client.NewStreamClient(wsURL)
	api := client.NewAPIClient(*server)

	m := app.New(stream, api)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
