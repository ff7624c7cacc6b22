package content

// Allocation is one row of the token distribution table. Coins is in
// millions of BMIC.
type Allocation struct {
	Title   string `json:"title"`
	Coins   int    `json:"coins"`
	Percent int    `json:"percent"`
}

var tokenomics = []Allocation{
	{Title: "Pre Sale", Coins: 300, Percent: 50},
	{Title: "Rewards & Staking", Coins: 250, Percent: 18},
	{Title: "Liquidity & Exchanges", Coins: 200, Percent: 15},
	{Title: "Team", Coins: 150, Percent: 3},
	{Title: "Ecosystem Reserve", Coins: 100, Percent: 8},
	{Title: "Marketing", Coins: 1500, Percent: 6},
}

func Tokenomics() []Allocation {
	out := make([]Allocation, len(tokenomics))
	copy(out, tokenomics)
	return out
}

// TotalPercent sums the Percent column.
func TotalPercent(rows []Allocation) int {
	total := 0
	for _, r := range rows {
		total += r.Percent
	}
	return total
}
