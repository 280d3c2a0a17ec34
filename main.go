package main

import (
	"github.com/lethe222/lottie-preview-huanfu/cmd"
)

func main() {
	cmd.Execute()
}
