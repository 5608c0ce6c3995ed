// Courier is a single-endpoint relay between a public chat widget and an
// LLM responses API.
//
// It accepts one visitor message per request, forwards it upstream under
// a fixed system instruction and a server-held credential, and returns
// the extracted reply as {"reply": "..."}. Pipeline failures never reach
// the caller as errors; they are masked as an empty reply.
//
// Usage:
//
//	# Start the relay with default configuration
//	courier run
//
//	# Start with a custom configuration file
//	courier run --config /etc/courier/config.yaml
//
//	# Override the listen address
//	courier run --listen 0.0.0.0:8080
//
//	# Check a configuration file without starting
//	courier validate
//
//	# Show version information
//	courier version
package main

func main() {
	Execute()
}
