package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	box "github.com/Delta456/box-cli-maker/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jessevdk/go-flags"

	"github.com/koblas/goglob/internal/config"
	"github.com/koblas/goglob/internal/webglob"
)

func main() {
	var opts struct {
		Listen *string `short:"l" long:"listen" description:"Port to listen on"`
		Config *string `short:"c" long:"config" description:"Path to goglob.json" default:"goglob.json"`
		Debug  bool    `short:"d" long:"debug" description:"Shows debugging information"`
	}

	if _, err := flags.Parse(&opts); err != nil {
		if !flags.WroteHelp(err) {
			panic(err)
		}
		os.Exit(0)
	}

	cfg, err := config.Load(*opts.Config)
	if err != nil {
		log.Fatal(err)
	}
	if opts.Listen != nil {
		cfg.Listen = *opts.Listen
	}
	if opts.Debug {
		cfg.Debug = true
	}

	state := webglob.New(cfg)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Compress(5))
	state.AttachRoutes(router)

	bx := box.New(box.Config{Px: 4, Py: 1})
	bx.Println("goglobd", fmt.Sprintf("- Local: http://localhost:%s\n- Roots: %d", cfg.Listen, len(cfg.Roots)))

	server := http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Listen),
		Handler: router,
	}
	log.Fatal(server.ListenAndServe())
}
