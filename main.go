package main

import "github.com/zfogg/swipefeed/internal/cmd"

func main() {
	cmd.Execute()
}
