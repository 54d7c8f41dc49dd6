package main

import (
	"fmt"
	"log"
	"os"

	"roiengine/cmd"

	_ "github.com/lib/pq"
)

func main() {
	fmt.Println(os.Getenv("commit_hash"))
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	err = apiHandler.StartApi(3011)
	if err != nil {
		log.Fatal(err)
	}
}
