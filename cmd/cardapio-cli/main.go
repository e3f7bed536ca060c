package main

import "cardapio/cmd/cardapio-cli/cmd"

func main() {
	cmd.Execute()
}
