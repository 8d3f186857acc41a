package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/theflywheel/chash"
)

func main() {
	addr := flag.String("http", "", "serve a debug table on this address (e.g. :8080)")
	capacity := flag.Int("capacity", chash.DefaultCapacity, "initial bucket count for the 50-string table and the -http table (the resize demo always starts at 5)")
	verbose := flag.Bool("v", false, "log resizes")
	flag.Parse()

	var logger *log.Logger
	if *verbose {
		logger = log.New(os.Stderr, "chash: ", log.LstdFlags)
	}

	if *addr != "" {
		s := NewServer(*capacity, logger)
		log.Printf("Serving debug table on %s", *addr)
		log.Fatal(http.ListenAndServe(*addr, s.Router()))
	}

	ht := chash.NewWithConfig[string, int](chash.Config[string]{Capacity: 5, Logger: logger})
	for _, kv := range []struct {
		key   string
		value int
	}{{"dog", 34}, {"cat", 234}, {"panda", 134}} {
		if err := ht.Put(kv.key, kv.value); err != nil {
			log.Fatalf("Failed to insert %s: %v", kv.key, err)
		}
	}

	fmt.Println("Before resize")
	if err := ht.DebugPrint(os.Stdout); err != nil {
		log.Fatalf("Failed to print table: %v", err)
	}

	if err := ht.Put("bull", 500); err != nil {
		log.Fatalf("Failed to insert bull: %v", err)
	}

	fmt.Println("After resize")
	if err := ht.DebugPrint(os.Stdout); err != nil {
		log.Fatalf("Failed to print table: %v", err)
	}
	fmt.Printf("size=%d capacity=%d load=%.2f\n", ht.Size(), ht.Capacity(), ht.LoadFactor())

	words := chash.New[string, string](*capacity)
	for i := 1; i <= 50; i++ {
		s := strings.Repeat("a", i)
		if err := words.Put(s, s); err != nil {
			log.Fatalf("Failed to insert %q: %v", s, err)
		}
	}
	fmt.Printf("Inserted 50 strings: size=%d capacity=%d\n", words.Size(), words.Capacity())

	words.Remove("a")
	if _, found := words.Get("a"); !found {
		fmt.Println("Key a removed")
	}

	fmt.Println("Example completed successfully")
}
