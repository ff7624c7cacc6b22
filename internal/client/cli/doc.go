// Package cli provides the interactive BMIC command-line client.
//
// It wires configuration, local storage, the session store and an
// interactive REPL. A background watcher pings the login endpoint and
// switches the prompt between online and offline; sign-in works in both
// modes because the session store falls back to local accounts when the
// remote cannot be reached.
//
// Commands:
//   - signup / signin / guest / signout / whoami
//   - accounts, avatar <uri>, upload-avatar <path>, delete [id]
//   - problems, solutions, benefits, invest, tokenomics, roadmap, info
//   - calendar [year [month]]
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
