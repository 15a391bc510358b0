// Package config loads the vango-toast project configuration.
//
// Load looks for toast.json, toast.yaml, toast.yml and toast.toml in that
// order and decodes the first one found. Keys missing from the file keep
// their defaults. Durations are in milliseconds.
//
//	{
//	  "toast": {
//	    "duration": 1600,
//	    "entryDelay": 10,
//	    "exitDelay": 400,
//	    "progressSettle": 100,
//	    "progress": true,
//	    "clickToDismiss": true,
//	    "containerId": "toast-container"
//	  },
//	  "preview": {
//	    "host": "localhost",
//	    "port": 3100,
//	    "openBrowser": false,
//	    "metrics": true
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    errors.PrintError(err)
//	    os.Exit(1)
//	}
//
//	reg := toast.New(doc, sched, toast.WithConfig(cfg.Toast.Registry()))
package config
