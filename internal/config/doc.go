// Package config loads the YAML run configuration.
//
// Every field is optional. Without a sources list the built-in production
// sources are used, so an empty file (or no file at all, via Default) runs
// the standard catalogue build. Durations are written as Go duration strings
// such as "30s" or "1m30s".
//
// Example:
//
//	output: public/events.json
//	timeout: 20s
//	parallel: true
//	policies:
//	  pace_every: 5
//	  pace_delay: 2s
//	sources:
//	  - name: ibjjf
//	    kind: cards
//	    url: https://ibjjf.com/events/calendar
//	    render: true
//	    category: combat
//	    sport_tag: jjb
//	    federation: IBJJF
//	publish:
//	  s3_bucket: my-app-data
//	  region: eu-west-3
package config
