package qlearning

import (
	"fmt"
	"math"

	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"snake-engine/ai"
)

const (
	// Learning parameters
	LearningRate   = 0.005
	Gamma          = 0.95
	InitialEpsilon = 1.0
	MinEpsilon     = 0.05
	GradientClip   = 0.5

	// DQN parameters
	BatchSize        = 32
	ReplayBufferSize = 5000
	HiddenLayerSize  = 12
	InputFeatures    = ai.NumFeatures // 3 danger flags + 4 apple direction flags
	OutputActions    = ai.NumActions
	Tau              = 0.001 // Soft update rate of the target network
)

// Transition is a single step in the environment.
type Transition struct {
	State     []float64
	Action    int
	Reward    float64
	NextState []float64
	Done      bool
}

// ReplayBuffer is a ring of past transitions.
type ReplayBuffer struct {
	buffer   []Transition
	maxSize  int
	position int
	size     int
}

func NewReplayBuffer(maxSize int) *ReplayBuffer {
	return &ReplayBuffer{
		buffer:  make([]Transition, maxSize),
		maxSize: maxSize,
	}
}

// Add overwrites the oldest transition once the buffer is full.
func (b *ReplayBuffer) Add(t Transition) {
	b.buffer[b.position] = t
	b.position = (b.position + 1) % b.maxSize
	if b.size < b.maxSize {
		b.size++
	}
}

func (b *ReplayBuffer) Len() int {
	return b.size
}

// Sample draws batchSize transitions with replacement. An empty buffer
// yields none.
func (b *ReplayBuffer) Sample(batchSize int, rand ai.Random) []Transition {
	if b.size == 0 {
		return nil
	}
	batch := make([]Transition, batchSize)
	for i := range batch {
		batch[i] = b.buffer[rand.Intn(b.size)]
	}
	return batch
}

// DQN is a two layer perceptron compiled for a fixed batch of BatchSize rows.
// Smaller inputs are zero padded.
type DQN struct {
	g      *gorgonia.ExprGraph
	x, y   *gorgonia.Node
	w1, w2 *gorgonia.Node
	b1, b2 *gorgonia.Node
	pred   *gorgonia.Node
	loss   *gorgonia.Node

	predVal gorgonia.Value
	lossVal gorgonia.Value
	vm      gorgonia.VM
	solver  gorgonia.Solver
}

func NewDQN() (*DQN, error) {
	g := gorgonia.NewGraph()

	x := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(BatchSize, InputFeatures),
		gorgonia.WithName("x"))
	y := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(BatchSize, OutputActions),
		gorgonia.WithName("y"))

	// Input layer -> Hidden layer
	w1 := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(InputFeatures, HiddenLayerSize),
		gorgonia.WithName("w1"),
		gorgonia.WithInit(gorgonia.GlorotU(1.0)))
	b1 := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(1, HiddenLayerSize),
		gorgonia.WithName("b1"),
		gorgonia.WithInit(gorgonia.Zeroes()))

	// Hidden layer -> Output layer
	w2 := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(HiddenLayerSize, OutputActions),
		gorgonia.WithName("w2"),
		gorgonia.WithInit(gorgonia.GlorotU(1.0)))
	b2 := gorgonia.NewMatrix(g, tensor.Float64,
		gorgonia.WithShape(1, OutputActions),
		gorgonia.WithName("b2"),
		gorgonia.WithInit(gorgonia.Zeroes()))

	dqn := &DQN{g: g, x: x, y: y, w1: w1, w2: w2, b1: b1, b2: b2}

	// Hidden layer with ReLU, bias broadcast over the batch
	h1, err := gorgonia.Mul(x, w1)
	if err != nil {
		return nil, err
	}
	if h1, err = gorgonia.BroadcastAdd(h1, b1, nil, []byte{0}); err != nil {
		return nil, err
	}
	if h1, err = gorgonia.Rectify(h1); err != nil {
		return nil, err
	}

	out, err := gorgonia.Mul(h1, w2)
	if err != nil {
		return nil, err
	}
	if dqn.pred, err = gorgonia.BroadcastAdd(out, b2, nil, []byte{0}); err != nil {
		return nil, err
	}

	// MSE loss
	diff, err := gorgonia.Sub(dqn.pred, y)
	if err != nil {
		return nil, err
	}
	sq, err := gorgonia.Square(diff)
	if err != nil {
		return nil, err
	}
	if dqn.loss, err = gorgonia.Mean(sq); err != nil {
		return nil, err
	}
	if _, err := gorgonia.Grad(dqn.loss, dqn.learnables()...); err != nil {
		return nil, fmt.Errorf("gradients: %w", err)
	}

	gorgonia.Read(dqn.pred, &dqn.predVal)
	gorgonia.Read(dqn.loss, &dqn.lossVal)

	// Targets start as zeros so a plain forward pass can run.
	if err := gorgonia.Let(y, tensor.New(tensor.WithShape(BatchSize, OutputActions),
		tensor.WithBacking(make([]float64, BatchSize*OutputActions)))); err != nil {
		return nil, err
	}

	dqn.vm = gorgonia.NewTapeMachine(g, gorgonia.BindDualValues(dqn.learnables()...))
	dqn.solver = gorgonia.NewAdamSolver(
		gorgonia.WithLearnRate(LearningRate),
		gorgonia.WithL2Reg(1e-6),
		gorgonia.WithClip(GradientClip),
		gorgonia.WithBatchSize(BatchSize))
	return dqn, nil
}

func (dqn *DQN) learnables() gorgonia.Nodes {
	return gorgonia.Nodes{dqn.w1, dqn.b1, dqn.w2, dqn.b2}
}

// Forward returns OutputActions values for each of the given states, which
// are concatenated rows of InputFeatures.
func (dqn *DQN) Forward(states []float64) ([]float64, error) {
	rows, err := dqn.setInput(states)
	if err != nil {
		return nil, err
	}
	defer dqn.vm.Reset()

	if err := dqn.vm.RunAll(); err != nil {
		return nil, fmt.Errorf("forward pass error: %w", err)
	}
	return dqn.predictions(rows)
}

// Fit runs one optimisation step towards targets and returns the loss.
func (dqn *DQN) Fit(states, targets []float64) (float64, error) {
	rows, err := dqn.setInput(states)
	if err != nil {
		return 0, err
	}
	if len(targets) != rows*OutputActions {
		return 0, fmt.Errorf("expected %d targets, got %d", rows*OutputActions, len(targets))
	}
	padded := make([]float64, BatchSize*OutputActions)
	copy(padded, targets)
	if err := gorgonia.Let(dqn.y, tensor.New(tensor.WithShape(BatchSize, OutputActions), tensor.WithBacking(padded))); err != nil {
		return 0, err
	}
	defer dqn.vm.Reset()

	if err := dqn.vm.RunAll(); err != nil {
		return 0, fmt.Errorf("backprop error: %w", err)
	}
	if err := dqn.solver.Step(gorgonia.NodesToValueGrads(dqn.learnables())); err != nil {
		return 0, fmt.Errorf("solver step: %w", err)
	}
	loss, ok := dqn.lossVal.Data().(float64)
	if !ok {
		return 0, fmt.Errorf("invalid loss value %v", dqn.lossVal)
	}
	return loss, nil
}

func (dqn *DQN) setInput(states []float64) (int, error) {
	rows := len(states) / InputFeatures
	if rows == 0 || rows > BatchSize || len(states)%InputFeatures != 0 {
		return 0, fmt.Errorf("invalid state batch of %d values", len(states))
	}
	padded := make([]float64, BatchSize*InputFeatures)
	copy(padded, states)
	return rows, gorgonia.Let(dqn.x, tensor.New(tensor.WithShape(BatchSize, InputFeatures), tensor.WithBacking(padded)))
}

func (dqn *DQN) predictions(rows int) ([]float64, error) {
	if dqn.predVal == nil {
		return nil, fmt.Errorf("nil prediction value")
	}
	data, ok := dqn.predVal.Data().([]float64)
	if !ok {
		return nil, fmt.Errorf("invalid prediction tensor type")
	}
	out := make([]float64, rows*OutputActions)
	copy(out, data)
	return out, nil
}

// Agent is a DQN policy with experience replay and a soft updated target
// network. It satisfies ai.Policy.
type Agent struct {
	dqn          *DQN
	targetDQN    *DQN
	replayBuffer *ReplayBuffer
	rand         ai.Random

	Discount        float64
	Epsilon         float64
	InitialEpsilon  float64
	MinEpsilon      float64
	TrainingEpisode int
	LastLoss        float64
	// LastErr is the error of the most recent training step, nil on success.
	LastErr error
}

func NewAgent(rand ai.Random) (*Agent, error) {
	dqn, err := NewDQN()
	if err != nil {
		return nil, fmt.Errorf("online network: %w", err)
	}
	target, err := NewDQN()
	if err != nil {
		return nil, fmt.Errorf("target network: %w", err)
	}
	a := &Agent{
		dqn:            dqn,
		targetDQN:      target,
		replayBuffer:   NewReplayBuffer(ReplayBufferSize),
		rand:           rand,
		Discount:       Gamma,
		Epsilon:        InitialEpsilon,
		InitialEpsilon: InitialEpsilon,
		MinEpsilon:     MinEpsilon,
	}
	syncWeights(a.targetDQN, a.dqn, 1)
	return a, nil
}

// Act picks an epsilon-greedy action. A failed forward pass falls back to a
// random action.
func (a *Agent) Act(obs ai.Observation) ai.Action {
	if a.rand.Float64() < a.Epsilon {
		return ai.Action(a.rand.Intn(OutputActions))
	}
	qValues, err := a.QValues(obs)
	if err != nil {
		return ai.Action(a.rand.Intn(OutputActions))
	}
	return ai.Action(argmax(qValues))
}

// QValues returns the online network estimate for obs.
func (a *Agent) QValues(obs ai.Observation) ([]float64, error) {
	return a.dqn.Forward(obs.Features())
}

// Learn stores the transition and trains on a sampled batch once enough
// experience is collected.
func (a *Agent) Learn(obs ai.Observation, action ai.Action, reward float64, next ai.Observation, done bool) {
	a.replayBuffer.Add(Transition{
		State:     obs.Features(),
		Action:    int(action),
		Reward:    reward,
		NextState: next.Features(),
		Done:      done,
	})
	if a.replayBuffer.Len() < BatchSize {
		return
	}
	loss, err := a.trainOnBatch(a.replayBuffer.Sample(BatchSize, a.rand))
	a.LastErr = err
	if err == nil {
		a.LastLoss = loss
	}
}

func (a *Agent) trainOnBatch(batch []Transition) (float64, error) {
	states := make([]float64, 0, len(batch)*InputFeatures)
	nextStates := make([]float64, 0, len(batch)*InputFeatures)
	for _, t := range batch {
		states = append(states, t.State...)
		nextStates = append(nextStates, t.NextState...)
	}

	current, err := a.dqn.Forward(states)
	if err != nil {
		return 0, err
	}
	next, err := a.targetDQN.Forward(nextStates)
	if err != nil {
		return 0, err
	}

	targets := make([]float64, len(current))
	copy(targets, current)
	for i, t := range batch {
		target := t.Reward
		if !t.Done {
			target += a.Discount * next[i*OutputActions+argmax(next[i*OutputActions:(i+1)*OutputActions])]
		}
		targets[i*OutputActions+t.Action] = target
	}

	loss, err := a.dqn.Fit(states, targets)
	if err != nil {
		return 0, err
	}
	syncWeights(a.targetDQN, a.dqn, Tau)
	return loss, nil
}

// EndEpisode decays exploration.
func (a *Agent) EndEpisode() {
	a.TrainingEpisode++
	a.Epsilon = math.Max(a.MinEpsilon, a.InitialEpsilon*math.Exp(-float64(a.TrainingEpisode)/500))
}

// syncWeights moves target weights towards source by tau.
func syncWeights(target, source *DQN, tau float64) {
	for i, n := range source.learnables() {
		src := n.Value().Data().([]float64)
		dst := target.learnables()[i].Value().Data().([]float64)
		for j := range dst {
			dst[j] = tau*src[j] + (1-tau)*dst[j]
		}
	}
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
