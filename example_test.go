package batuta_test

import (
	"context"
	"fmt"
	"log"

	"github.com/batuta-io/batuta"
)

// Embedding the engine takes three steps: construct, handle, read the reply.
func Example() {
	engine, err := batuta.New()
	if err != nil {
		log.Fatal(err)
	}

	resp, err := engine.HandleMessage(context.Background(), "example-session", "docs", "hello")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.Workflow)
	fmt.Println(resp.Phase)
	// Output:
	// general
	// completed
}
