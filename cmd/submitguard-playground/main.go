package main

import (
	"github.com/submitguard/submitguard/playground"
)

func main() {
	playground.Main()
}
