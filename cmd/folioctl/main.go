// Command folioctl is the operator CLI for the folio content gateway.
package main

func main() {
	Execute()
}
