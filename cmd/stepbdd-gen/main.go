package main

import (
	"context"
	"log"

	"github.com/go-stepbdd/stepbdd/internal/comment_parser"
	"github.com/go-stepbdd/stepbdd/internal/generator"
)

func main() {
	err := generator.StartGenerator(context.Background(), comment_parser.NewGoSourceFileParser())
	if err != nil {
		log.Fatal(err.Error())
	}
}
