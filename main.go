/*
Copyright © 2025 changheonshin
*/
package main

import "github.com/filesort/filesort/cmd"

func main() {
	cmd.Execute()
}
