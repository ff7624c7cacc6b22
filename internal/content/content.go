// Package content holds the static BMIC catalog: problem statements,
// solution layers, token benefits, investment highlights, tokenomics and
// the roadmap. Every accessor returns a fresh copy.
package content

import "github.com/dmitrijs2005/bmic/internal/buildinfo"

// DefaultVersion is reported when the binary was built without a stamped
// version.
const DefaultVersion = "1.0.2"

type Card struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description"`
}

var problems = []Card{
	{
		Title:       "Centralization in Quantum Access",
		Description: "Current quantum computing is controlled by tech giants, limiting innovation and accessibility for smaller organizations and researchers.",
	},
	{
		Title:       "Quantum Threat to Crypto",
		Description: "Quantum computers threaten current cryptographic systems, putting blockchain security and digital assets at risk of compromise.",
	},
	{
		Title:       "AI's Compute Ceiling",
		Description: "AI advancement is hitting computational limits with classical computers, requiring quantum processing for next-generation breakthroughs.",
	},
}

var solutions = []Card{
	{
		Title:       "Quantum Hardware Layer",
		Description: "We combine IBM Qiskit to integrate AI and quantum computing and cloud systems. Our quantum cloud is designed for high-performance computing and AI workloads.",
	},
	{
		Title:       "Blockchain Accept Layer",
		Description: "Access to quantum is delivered. BMIC protocol incentivizes, payments, staking, and governance. Compute nodes work together through the decentralized network.",
	},
	{
		Title:       "AI Orchestration Layer",
		Description: "AI algorithms manage connectivity, infrastructure workloads, and resource optimization across the network. BMIC incentivizes efficiency, fault tolerance, and predictive scaling.",
	},
}

var benefits = []Card{
	{Title: "Compute Payments", Description: "Pay for quantum cloud services with BMIC tokens"},
	{Title: "Staking Rewards", Description: "Stake BMIC tokens to earn rewards and secure the network"},
	{Title: "Governance", Description: "Participate in protocol governance and decision making"},
	{Title: "Node Access", Description: "Gain for premium computing power access and node types"},
	{Title: "NFT Scheduling", Description: "Get NFTs for priority job scheduling on quantum nodes"},
}

var investment = []Card{
	{
		Title:       "€40M",
		Subtitle:    "Funding Raised",
		Description: "Capital raised from institutional investors and strategic partners to fund quantum infrastructure development",
	},
	{
		Title:       "10x",
		Subtitle:    "Projected ROI",
		Description: "Expected return on investment based on quantum computing market growth projections",
	},
	{
		Title:       "First",
		Subtitle:    "Competitive Edge",
		Description: "World's first decentralized quantum cloud platform combining AI orchestration with blockchain governance",
	},
}

func Problems() []Card   { return cloneCards(problems) }
func Solutions() []Card  { return cloneCards(solutions) }
func Benefits() []Card   { return cloneCards(benefits) }
func Investment() []Card { return cloneCards(investment) }

func cloneCards(src []Card) []Card {
	out := make([]Card, len(src))
	copy(out, src)
	return out
}

// AppInfo is what the info command shows.
type AppInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	Commit    string `json:"commit"`
}

func Info() AppInfo {
	bi := buildinfo.Current()
	v := bi.Version
	if v == "" || v == "N/A" {
		v = DefaultVersion
	}
	return AppInfo{Name: "BMIC", Version: v, BuildDate: bi.BuildDate, Commit: bi.Commit}
}
