package main

import "github.com/koki-develop/img2txt/cmd"

func main() {
	cmd.Execute()
}
