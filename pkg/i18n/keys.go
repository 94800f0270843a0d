package i18n

// Key identifies a user-visible message. Every locale defines every Key.
type Key string

const (
	Title    Key = "title"
	Scan     Key = "scan"
	AutoFix  Key = "auto_fix"
	Options  Key = "options"
	DarkMode Key = "dark_mode"
	Exit     Key = "exit"
	Language Key = "language"

	OnlyWindows  Key = "only_windows"
	AdminWarning Key = "admin_warning"
	AdminTitle   Key = "admin_title"
	WorkflowBusy Key = "workflow_busy"
	Cancelled    Key = "cancelled"

	ScanStarted    Key = "scan_started"
	ScanCompleted  Key = "scan_completed"
	FixStarted     Key = "auto_fix_started"
	FixCompleted   Key = "auto_fix_completed"
	VCMissingFound Key = "vc_missing_found"
	VCAllInstalled Key = "vc_all_installed"
	VCCheckFailed  Key = "vc_check_failed"
	VCItemFailed   Key = "vc_check_item_failed"

	VCConfirmTitle     Key = "vc_install_confirm_title"
	VCConfirmText      Key = "vc_install_confirm_text"
	VCInstalling       Key = "vc_installing"
	VCInstallSkipped   Key = "vc_install_skipped"
	VCInstallOK        Key = "vc_install_ok"
	VCInstallReboot    Key = "vc_install_reboot"
	VCInstallNewer     Key = "vc_install_newer"
	VCInstallFailed    Key = "vc_install_failed"
	VCInstallerMissing Key = "vc_installer_missing"
	VCInstallChecksum  Key = "vc_install_checksum"
	VCInstallUnknown   Key = "vc_install_unknown"

	PortCheck       Key = "port_check"
	PortUsed        Key = "port_used"
	PortStatus      Key = "port_status"
	PortProbeFailed Key = "port_probe_failed"

	ApacheCheck        Key = "apache_check"
	ApacheRunning      Key = "apache_running"
	ApacheStopped      Key = "apache_stopped"
	ApacheStatus       Key = "apache_status"
	ApacheQueryFailed  Key = "apache_query_failed"
	ApacheStarting     Key = "apache_starting"
	ApacheStarted      Key = "apache_started"
	ApacheAlready      Key = "apache_already"
	ApacheStartFailed  Key = "apache_start_failed"
	ApacheStartTimeout Key = "apache_start_timeout"

	Yes       Key = "yes"
	No        Key = "no"
	HelpLine  Key = "help_line"
	Ready     Key = "ready"
	Busy      Key = "busy"
	ReportOut Key = "report_written"
)

// AllKeys lists every Key; locale tables are checked against it.
var AllKeys = []Key{
	Title, Scan, AutoFix, Options, DarkMode, Exit, Language,
	OnlyWindows, AdminWarning, AdminTitle, WorkflowBusy, Cancelled,
	ScanStarted, ScanCompleted, FixStarted, FixCompleted,
	VCMissingFound, VCAllInstalled, VCCheckFailed, VCItemFailed,
	VCConfirmTitle, VCConfirmText, VCInstalling, VCInstallSkipped,
	VCInstallOK, VCInstallReboot, VCInstallNewer, VCInstallFailed,
	VCInstallerMissing, VCInstallChecksum, VCInstallUnknown,
	PortCheck, PortUsed, PortStatus, PortProbeFailed,
	ApacheCheck, ApacheRunning, ApacheStopped, ApacheStatus, ApacheQueryFailed,
	ApacheStarting, ApacheStarted, ApacheAlready, ApacheStartFailed, ApacheStartTimeout,
	Yes, No, HelpLine, Ready, Busy, ReportOut,
}
