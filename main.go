// Copyright © 2025 The Lantern authors

package main

import "github.com/lanternhq/lantern/cmd"

func main() {
	cmd.Execute()
}
