// Command codectl validates and maintains a multicodec table.
package main

func main() {
	execute()
}
