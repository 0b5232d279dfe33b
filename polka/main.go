package main

import (
	"fmt"
	"net/http"
	"os"

	system "github.com/kildevaeld/go-system"
	"github.com/kildevaeld/polka"
	"github.com/kildevaeld/polka/middlewares/logger"
	panichandler "github.com/kildevaeld/polka/middlewares/panic"
	"github.com/kildevaeld/polka/mountables/filesystem"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {

	if err := system.Run(wrappedMain); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}

}

func wrappedMain(kill system.KillChannel) error {

	address := pflag.StringP("address", "H", ":3000", "address")
	debug := pflag.BoolP("debug", "d", false, "debug")

	pflag.Parse()

	if *debug {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}

		zap.ReplaceGlobals(log)
	}

	server := polka.NewWithOptions(&polka.Options{
		Debug: *debug,
	})

	server.Use(panichandler.New(), logger.Logger())

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	server.Mount("/", filesystem.New(http.Dir(cwd)))

	go func() {
		<-kill
		server.Close()
	}()

	return server.Listen(*address, func() {
		zap.L().Info("Started server and listening", zap.String("address", *address))
	})
}
