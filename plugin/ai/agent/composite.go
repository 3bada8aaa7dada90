package agent

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/repgenie/repgenie/store"
)

// CompositeAgent fans the request out to the workout, news and video
// agents concurrently and joins the replies under headed sections in a
// fixed order.
type CompositeAgent struct {
	workout Agent
	news    Agent
	video   Agent
}

// NewCompositeAgent creates the composite "all" agent.
func NewCompositeAgent(workout, news, video Agent) *CompositeAgent {
	return &CompositeAgent{workout: workout, news: news, video: video}
}

func (a *CompositeAgent) Type() store.AgentType {
	return store.AgentTypeAll
}

func (a *CompositeAgent) Respond(ctx context.Context, req *Request) (string, error) {
	var workoutReply, newsReply, videoReply string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		workoutReply, err = a.workout.Respond(gctx, req)
		return err
	})
	g.Go(func() error {
		var err error
		newsReply, err = a.news.Respond(gctx, req)
		return err
	})
	g.Go(func() error {
		var err error
		videoReply, err = a.video.Respond(gctx, req)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	sections := []string{
		"🧠 **Workout/Meal Plan**:\n" + workoutReply,
		"📰 **News**:\n" + newsReply,
		"📺 **YouTube**:\n" + videoReply,
	}
	return strings.Join(sections, "\n\n"), nil
}
