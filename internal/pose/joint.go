package pose

// Joint names one tracked skeletal point as reported by the pose model.
type Joint string

const (
	JointNose          Joint = "nose"
	JointLeftShoulder  Joint = "left_shoulder"
	JointRightShoulder Joint = "right_shoulder"
	JointLeftElbow     Joint = "left_elbow"
	JointRightElbow    Joint = "right_elbow"
	JointLeftWrist     Joint = "left_wrist"
	JointRightWrist    Joint = "right_wrist"
	JointLeftHip       Joint = "left_hip"
	JointRightHip      Joint = "right_hip"
	JointLeftKnee      Joint = "left_knee"
	JointRightKnee     Joint = "right_knee"
	JointLeftAnkle     Joint = "left_ankle"
	JointRightAnkle    Joint = "right_ankle"
)

// AllJoints lists every joint the service understands.
var AllJoints = []Joint{
	JointNose,
	JointLeftShoulder, JointRightShoulder,
	JointLeftElbow, JointRightElbow,
	JointLeftWrist, JointRightWrist,
	JointLeftHip, JointRightHip,
	JointLeftKnee, JointRightKnee,
	JointLeftAnkle, JointRightAnkle,
}

func (j Joint) String() string {
	return string(j)
}

func (j Joint) IsValid() bool {
	switch j {
	case JointNose,
		JointLeftShoulder, JointRightShoulder,
		JointLeftElbow, JointRightElbow,
		JointLeftWrist, JointRightWrist,
		JointLeftHip, JointRightHip,
		JointLeftKnee, JointRightKnee,
		JointLeftAnkle, JointRightAnkle:
		return true
	default:
		return false
	}
}

// Side groups the joints of one leg and the shoulder above it.
type Side struct {
	Name     string
	Shoulder Joint
	Hip      Joint
	Knee     Joint
	Ankle    Joint
}

var (
	LeftSide = Side{
		Name:     "left",
		Shoulder: JointLeftShoulder,
		Hip:      JointLeftHip,
		Knee:     JointLeftKnee,
		Ankle:    JointLeftAnkle,
	}
	RightSide = Side{
		Name:     "right",
		Shoulder: JointRightShoulder,
		Hip:      JointRightHip,
		Knee:     JointRightKnee,
		Ankle:    JointRightAnkle,
	}
	Sides = []Side{LeftSide, RightSide}
)
