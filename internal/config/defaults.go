package config

const (
	defaultRemoteHost        = "192.168.1.100"
	defaultRemoteUser        = "user"
	defaultBarrierPort       = 24800
	defaultBarrierAgent      = "com.github.barrier.server"
	defaultBarrierPattern    = "barriers"
	defaultRemoteKMService   = "input-leap-client.service"
	defaultBarrierProbeSecs  = 5
	defaultLocalForward      = "11436:127.0.0.1:11434"
	defaultRemoteForward     = "18796:127.0.0.1:18789"
	defaultPgrepTimeoutSecs  = 3
	defaultConnectTimeout    = 3
	defaultCheckTimeoutSecs  = 6
	defaultRestartDelayMS    = 1000
	defaultSMBProbeSecs      = 5
	defaultLogDir            = "~/.local/state/relink"
	defaultAPIBind           = "127.0.0.1:0"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultOpenBrowser       = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Remote: Remote{
			Host: defaultRemoteHost,
			User: defaultRemoteUser,
		},
		Barrier: Barrier{
			Port:           defaultBarrierPort,
			Agent:          defaultBarrierAgent,
			ProcessPattern: defaultBarrierPattern,
			RemoteService:  defaultRemoteKMService,
			ProbeTimeout:   defaultBarrierProbeSecs,
		},
		SSH: SSH{
			LocalForward:   defaultLocalForward,
			RemoteForward:  defaultRemoteForward,
			PgrepTimeout:   defaultPgrepTimeoutSecs,
			ConnectTimeout: defaultConnectTimeout,
			CheckTimeout:   defaultCheckTimeoutSecs,
			RestartDelayMS: defaultRestartDelayMS,
		},
		SMB: SMB{
			ProbeTimeout: defaultSMBProbeSecs,
		},
		Paths: Paths{
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Dashboard: Dashboard{
			OpenBrowser: defaultOpenBrowser,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
