// Package main provides the CLI entrypoint for devconsole.
package main

func main() {
	Execute()
}
