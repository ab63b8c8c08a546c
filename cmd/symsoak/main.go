// Command symsoak is a developer tool that soak-tests the expression engine.
// It builds random trees through the library API, checks algebraic
// properties against them and reports shrunk counterexamples. It never reads
// or parses expressions, so it is not a user-facing front end to the engine.
package main

func main() {
	Execute()
}
