package main

import "github.com/llehouerou/mediacontroller/cmd"

func main() {
	cmd.Execute()
}
