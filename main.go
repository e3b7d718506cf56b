package main

import (
	"os"

	"github.com/authsrv/oauth2-userinfo/cmd/daemon"
)

var version = "dev"

func main() {
	os.Exit(daemon.Execute(os.Args, os.Stdout, version))
}
