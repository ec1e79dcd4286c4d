package playground

import (
	"golang.org/x/exp/slices"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func ensure(err error) {
	if err != nil {
		panic(err)
	}
}

func sortStrings(ss []string) {
	slices.Sort(ss)
}
