package main

import (
	"github.com/ATCHON/sunbeam/cmd"
	"github.com/ATCHON/sunbeam/internal/version"
)

func main() {
	cmd.SetVersion(version.Version)
	cmd.Execute()
}
