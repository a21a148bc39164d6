package main

import "github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/cmd"

func main() {
	cmd.Execute()
}
