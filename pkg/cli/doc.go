/*
Package cli provides command-line interface utilities for Courier.

The cli package includes output formatters, typed command errors, and
signal handling helpers used by the courier command.

Output Formatting:

Command results can be rendered as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	data := MyCommandResult{...}
	if err := formatter.FormatTo(os.Stdout, data); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown

or block until a signal arrives:

	sig := <-cli.WaitForShutdown()
*/
package cli
