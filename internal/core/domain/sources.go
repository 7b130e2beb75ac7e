package domain

// DefaultSources returns the built-in article list: 2025 threat reports
// from The Hacker News.
func DefaultSources() []string {
	return []string{
		"https://thehackernews.com/2025/12/chinese-hackers-have-started-exploiting.html",
		"https://thehackernews.com/2025/12/react2shell-exploitation-escalates-into.html",
		"https://thehackernews.com/2025/12/warning-winrar-vulnerability-cve-2025.html",
		"https://thehackernews.com/2025/12/threatsday-bulletin-spyware-alerts.html",
		"https://thehackernews.com/2025/12/chrome-targeted-by-active-in-wild.html",
		"https://thehackernews.com/2025/12/unpatched-gogs-zero-day-exploited.html",
		"https://thehackernews.com/2025/12/storm-0249-escalates-ransomware-attacks.html",
		"https://thehackernews.com/2025/12/nanoremote-malware-uses-google-drive.html",
		"https://thehackernews.com/2025/11/apt24-deploys-badaudio-in-years-long.html",
		"https://thehackernews.com/2025/08/charon-ransomware-hits-middle-east.html",
		"https://thehackernews.com/2025/12/5-threats-that-reshaped-web-security.html",
		"https://thehackernews.com/2025/12/microsoft-issues-security-fixes-for-56.html",
		"https://thehackernews.com/2025/12/critical-xxe-bug-cve-2025-66516-cvss.html",
		"https://thehackernews.com/2025/11/fortinet-warns-of-new-fortiweb-cve-2025.html",
		"https://thehackernews.com/2025/12/new-advanced-phishing-kits-use-ai-and.html",
	}
}
