// Command flowbot is a conversational front-end for a small workflow
// tracker: type commands, watch the board change.
package main

import "flowbot/internal/cli"

func main() {
	cli.Execute()
}
