package game

// Counts is a multiset of cards keyed by species. Piles, hands and
// collections are all plain counts since cards carry no identity.
type Counts [NumSpecies]int

func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Distinct returns the number of species with at least one card.
func (c Counts) Distinct() int {
	distinct := 0
	for _, n := range c {
		if n > 0 {
			distinct++
		}
	}
	return distinct
}

// AtLeast returns the number of species with n or more cards.
func (c Counts) AtLeast(n int) int {
	count := 0
	for _, v := range c {
		if v >= n {
			count++
		}
	}
	return count
}

func (c *Counts) AddAll(cards []Species) {
	for _, s := range cards {
		c[s]++
	}
}

func (c *Counts) Merge(other Counts) {
	for i, n := range other {
		c[i] += n
	}
}

func (c Counts) Sub(other Counts) Counts {
	for i, n := range other {
		c[i] -= n
	}
	return c
}

// Contains reports whether every species count of other fits in c.
func (c Counts) Contains(other Counts) bool {
	for i, n := range other {
		if n > c[i] {
			return false
		}
	}
	return true
}

// Sample picks a species with probability proportional to its count,
// given a uniform integer in [0, Total()).
func (c Counts) Sample(pick int) Species {
	for i, n := range c {
		if pick < n {
			return Species(i)
		}
		pick -= n
	}
	panic("sample out of range")
}
