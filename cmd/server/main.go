package main

import "payportal/internal/app/server"

func main() {
	server.Run()
}
