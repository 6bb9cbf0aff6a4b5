package battle

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// newsWriter renders news texts with grouped numbers.
type newsWriter struct {
	p       *message.Printer
	nations Nations
	loc     Location
}

func newNewsWriter(nations Nations, loc Location) newsWriter {
	return newsWriter{p: message.NewPrinter(language.English), nations: nations, loc: loc}
}

func (w newsWriter) printer() *message.Printer {
	if w.p == nil {
		return message.NewPrinter(language.English)
	}
	return w.p
}

func (w newsWriter) victory(enemy int, enemyLosses int) string {
	return w.printer().Sprintf("Our forces defeated the army of %s at %d/%d. The enemy lost %d men.",
		w.nations.Name(enemy), w.loc.X, w.loc.Y, enemyLosses)
}

func (w newsWriter) defeat(enemy int, losses int) string {
	return w.printer().Sprintf("Our forces were defeated by the army of %s at %d/%d. We lost %d men.",
		w.nations.Name(enemy), w.loc.X, w.loc.Y, losses)
}

func (w newsWriter) draw(losses int) string {
	return w.printer().Sprintf("The battle at %d/%d ended without a decision. We lost %d men.",
		w.loc.X, w.loc.Y, losses)
}

func (w newsWriter) commanderKilled(c *Commander) string {
	return w.printer().Sprintf("Our commander %s fell in the battle at %d/%d.", c.Name, w.loc.X, w.loc.Y)
}

func (w newsWriter) enemyCommanderKilled(c *Commander) string {
	return w.printer().Sprintf("The commander %s of %s was killed in the battle at %d/%d.",
		c.Name, w.nations.Name(c.Nation), w.loc.X, w.loc.Y)
}

func (w newsWriter) commanderCaptured(c *Commander, by int) string {
	return w.printer().Sprintf("Our commander %s was captured by %s at %d/%d.",
		c.Name, w.nations.Name(by), w.loc.X, w.loc.Y)
}

func (w newsWriter) enemyCommanderCaptured(c *Commander) string {
	return w.printer().Sprintf("Our troops captured the commander %s of %s at %d/%d.",
		c.Name, w.nations.Name(c.Nation), w.loc.X, w.loc.Y)
}

func (w newsWriter) promoted(c *Commander) string {
	rank := "a higher rank"
	if c.Rank != nil {
		rank = c.Rank.Name
	}
	return w.printer().Sprintf("Commander %s was promoted to %s after the victory at %d/%d.",
		c.Name, rank, w.loc.X, w.loc.Y)
}

func (w newsWriter) improved(c *Commander, gain int) string {
	return w.printer().Sprintf("Commander %s gained %d points of command experience at %d/%d.",
		c.Name, gain, w.loc.X, w.loc.Y)
}

func (w newsWriter) maxSkill(c *Commander) string {
	return w.printer().Sprintf("Commander %s has reached the pinnacle of military skill.", c.Name)
}

func (w newsWriter) fortressHeld(level int) string {
	return w.printer().Sprintf("The level %d fortress at %d/%d withstood the siege.", level, w.loc.X, w.loc.Y)
}

func (w newsWriter) fortressHeldGlobal(nation int) string {
	return w.printer().Sprintf("The great fortress of %s at %d/%d repelled all attackers.",
		w.nations.Name(nation), w.loc.X, w.loc.Y)
}

func (w newsWriter) populationReturned(amount int) string {
	return w.printer().Sprintf("%d of our scattered soldiers returned home to their villages.", amount)
}
