package main

import (
	"exusiai.dev/todoist-readme/cmd/app"
)

func main() {
	app.Run()
}
