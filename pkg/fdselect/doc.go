// Package fdselect is a thin wrapper over the operating system's select
// call. It blocks until one of the watched descriptors is ready or the
// timeout expires, and updates the sets in place the way select(2) does.
//
// On Unix the call goes to select(2) through golang.org/x/sys/unix. On
// Windows it goes to the Winsock select function and accepts sockets only.
package fdselect
