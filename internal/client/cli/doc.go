// Package cli is the interactive front end of receiptkeeper.
//
// NewApp wires the local database, API client, session store and services.
// App.Run restores the previous session and starts a REPL; session events
// switch the current screen (login or transactions) through
// session.NavigationAdapter. Commands that need an account are refused
// until the session is authenticated.
//
// Commands: register, login, logout, whoami, rename, passwd, list, show,
// add, edit, delete, addproduct, editproduct, delproduct, scan, daily,
// monthly, help, exit.
package cli
